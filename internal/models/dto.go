package models

import "time"

type ChatRequest struct {
	UserInput string `json:"user_input"`
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id"`
	State          string `json:"state"`
}

type MessageData struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	State    string        `json:"state"`
	Messages []MessageData `json:"messages"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type CareersResponse struct {
	Careers []string `json:"careers"`
}

type UploadCVResponse struct {
	Reply  string `json:"reply"`
	FileID string `json:"file_id"`
}
