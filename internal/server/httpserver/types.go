package httpserver

import "time"

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

type publicUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type listedUser struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	User    publicUser `json:"user"`
	Token   string     `json:"token"`
}

type verifyResponse struct {
	Status string     `json:"status"`
	User   publicUser `json:"user"`
}

type usersResponse struct {
	Status     string       `json:"status"`
	TotalUsers int          `json:"total_users"`
	Users      []listedUser `json:"users"`
}

type translateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Status         string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const statusSuccess = "success"

// Client-facing messages.
const (
	msgNoJSON             = "No JSON data provided"
	msgInvalidJSON        = "Invalid JSON"
	msgRegisterFields     = "Email, password, and name are required"
	msgLoginFields        = "Email and password are required"
	msgInvalidEmail       = "Invalid email format"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgNoToken            = "No authorization token provided"
	msgInvalidToken       = "Invalid or expired token"
	msgNoText             = "No text provided"
	msgTranslatorDown     = "Translation service unavailable"
	msgInternal           = "Internal server error"
	msgRegisteredOK       = "User registered successfully"
	msgLoginOK            = "Login successful"
)
