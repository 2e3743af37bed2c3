package handler

import "github.com/citylibrary/lending-system/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		LoggedIn: u.LoggedIn,
	}
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		Publisher: b.Publisher,
		Status:    string(b.Status),
	}
}

func toBookListResponse(books []*domain.Book) bookListResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return bookListResponse{Books: out, Count: len(out)}
}
