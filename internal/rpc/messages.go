package rpc

import "time"

type RegisterRequest struct {
	UserName     string `json:"username"`
	Password     string `json:"password"`
	SecondFactor string `json:"second_factor"`
}

type RegisterResponse struct {
	UserName string `json:"username"`
}

type LoginRequest struct {
	UserName     string `json:"username"`
	Password     string `json:"password"`
	SecondFactor string `json:"second_factor"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CheckRequest struct {
	Text string `json:"text"`
}

type CheckResponse struct {
	ID         int64    `json:"id"`
	Misspelled []string `json:"misspelled"`
}

type Query struct {
	ID         int64     `json:"id"`
	UserName   string    `json:"username"`
	Text       string    `json:"text"`
	Misspelled []string  `json:"misspelled"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryRequest struct {
	// Target is honoured for administrators only.
	Target string `json:"target,omitempty"`
}

type HistoryResponse struct {
	UserName string  `json:"username"`
	Queries  []Query `json:"queries"`
}

type QueryRequest struct {
	ID int64 `json:"id"`
}

type QueryResponse struct {
	Query Query `json:"query"`
}

type LoginRecord struct {
	ID         int64      `json:"id"`
	LoginTime  time.Time  `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
}

type LoginHistoryRequest struct {
	Target string `json:"target,omitempty"`
}

type LoginHistoryResponse struct {
	UserName string        `json:"username"`
	Records  []LoginRecord `json:"records"`
}
