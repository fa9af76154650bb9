package model

type Page struct {
	Limit  int
	Offset int
}

type Message struct {
	Message string `json:"message"`
}
