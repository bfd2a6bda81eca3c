package model

// Todo is a single todo record. The id is assigned by the store on
// create and never changes afterwards.
type Todo struct {
	ID   int    `json:"id" example:"1"`
	Text string `json:"text" example:"buy milk"`
	Done bool   `json:"done" example:"false"`
}

// TodoCreate carries the caller-supplied fields of a todo. It is the
// request body for create and replace; the store fills in the id.
type TodoCreate struct {
	Text string `json:"text" example:"buy milk"`
	Done bool   `json:"done" example:"false"`
}
