package httpapi

// credentialsRequest uses the original form field names.
type credentialsRequest struct {
	UserName     string `json:"uname" form:"uname"`
	Password     string `json:"pword" form:"pword"`
	SecondFactor string `json:"2fa" form:"2fa"`
}

type spellCheckRequest struct {
	InputText string `json:"inputtext" form:"inputtext"`
}

type resultResponse struct {
	Result    string `json:"result"`
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type homeResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserName      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	CSRFToken     string `json:"csrf_token,omitempty"`
}

type spellCheckResponse struct {
	ID         int64  `json:"id"`
	TextOut    string `json:"textout"`
	Misspelled string `json:"misspelled"`
}

type queryItem struct {
	ID         int64  `json:"id"`
	UserName   string `json:"username,omitempty"`
	Text       string `json:"text"`
	Misspelled string `json:"misspelled"`
}

type historyResponse struct {
	UserName string      `json:"username"`
	Count    int         `json:"count"`
	Queries  []queryItem `json:"queries"`
}

type loginItem struct {
	ID     int64  `json:"id"`
	Login  string `json:"login"`
	Logout string `json:"logout"`
}

type loginHistoryResponse struct {
	UserName string      `json:"username"`
	Records  []loginItem `json:"records"`
}
