package models

// User is a registered greeter user. ID is assigned by the store and never
// changes; Greeting is the only mutable field.
type User struct {
	ID       int64  `json:"id"`
	Greeting string `json:"greeting"`
}
