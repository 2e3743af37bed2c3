package handler

import "time"

// successResponse is the uniform envelope for completed operations. Failed
// operations render through the central error handler instead.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Auth ---

// Registration and login fields are checked by the directory service in a
// contractual order, so these requests deliberately carry no validate tags:
// the first failing service check decides the message.
type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type logoutRequest struct {
	Email string `json:"email" validate:"required"`
}

type deleteAccountRequest struct {
	Email string `json:"email" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	LoggedIn bool   `json:"logged_in"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// --- Books ---

type addBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
}

type bookResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
	Status    string `json:"status"`
}

type bookListResponse struct {
	Books []bookResponse `json:"books"`
	Count int            `json:"count"`
}

// --- Loans ---

type borrowRequest struct {
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
}

type returnRequest struct {
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
}

type borrowResponse struct {
	LoanID  string    `json:"loan_id"`
	DueDate time.Time `json:"due_date"`
}

type returnResponse struct {
	LoanID     string    `json:"loan_id"`
	ReturnedAt time.Time `json:"returned_at"`
}
