package entity

type Player struct {
	Name string `json:"name"`
	Mark string `json:"mark"`
}
