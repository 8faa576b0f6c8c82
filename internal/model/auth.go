package model

// RegisterParams holds the fields required to create an account.
type RegisterParams struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListTodosParams selects a page of todos. Status is "true", "false", "all" or empty.
type ListTodosParams struct {
	Page   int
	Limit  int
	Status string
	Query  string
}
