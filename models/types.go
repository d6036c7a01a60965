package models

import "time"

// Media type discriminants
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaGif   = "gif"
)

// Subscription status values
const (
	SubStatusActive    = "active"
	SubStatusCancelled = "cancelled"
	SubStatusExpired   = "expired"
)

// Question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionBoolean        = "boolean"
	QuestionSlider         = "slider"
)

// Course content types
const (
	ContentStory = "story"
	ContentQuiz  = "quiz"
	ContentMedia = "media"
)

// Support case status values
const (
	CaseOpen   = "open"
	CaseClosed = "closed"
)

// DefaultLanguage is applied to new users when none is given.
const DefaultLanguage = "sv"

// Request types

type CreateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Language     string `json:"language"`
}

type UpdateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Language     string `json:"language"`
	IsVerified   bool   `json:"is_verified"`
	IsActive     bool   `json:"is_active"`
}

// PatchUserRequest carries only the fields being changed.
type PatchUserRequest struct {
	IsActive   *bool   `json:"is_active,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
	Language   *string `json:"language,omitempty"`
}

type CreateStudentProfileRequest struct {
	TeacherID  *int64 `json:"teacher_id,omitempty"`
	GradeLevel string `json:"grade_level"`
}

type CreateTeacherProfileRequest struct {
	SchoolName string `json:"school_name"`
	Subject    string `json:"subject"`
}

type CreateCompanyProfileRequest struct {
	CompanyName string `json:"company_name"`
	OrgNumber   string `json:"org_number"`
}

type AssignRoleRequest struct {
	RoleID int64 `json:"role_id"`
}

type CreateRoleRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreatePermissionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type GrantPermissionRequest struct {
	PermissionID int64 `json:"permission_id"`
}

// CreateMediaRequest creates the base row plus exactly one subtype row,
// selected by Type. Subtype fields outside the selected type are ignored.
type CreateMediaRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`

	// image / gif
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	AltText string `json:"alt_text,omitempty"`

	// video
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Resolution      string `json:"resolution,omitempty"`

	// gif
	LoopCount int `json:"loop_count,omitempty"`
}

type CreatePlanRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
}

type CreateFeatureRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SetPlanFeatureRequest attaches a feature override to a plan. A row exists
// only for plans that customize the feature.
type SetPlanFeatureRequest struct {
	FeatureID int64  `json:"feature_id"`
	Value     string `json:"value"`
}

type CreateSubscriptionRequest struct {
	UserID    int64      `json:"user_id"`
	PlanID    int64      `json:"plan_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type PatchSubscriptionRequest struct {
	Status string `json:"status"`
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
}

type CreateQuizRequest struct {
	Name             string `json:"name"`
	CreationMethodID *int64 `json:"creation_method_id,omitempty"`
	CreatorID        int64  `json:"creator_id"`
	MediaID          *int64 `json:"media_id,omitempty"`
}

type UpdateQuizRequest struct {
	Name             string `json:"name"`
	CreationMethodID *int64 `json:"creation_method_id,omitempty"`
	MediaID          *int64 `json:"media_id,omitempty"`
}

type CreateQuestionRequest struct {
	QuizID       int64  `json:"quiz_id"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	TimeLimit    *int   `json:"time_limit,omitempty"`
	Points       *int   `json:"points,omitempty"`
	SortOrder    *int   `json:"sort_order,omitempty"`
	MediaID      *int64 `json:"media_id,omitempty"`
}

type CreateAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  *int   `json:"sort_order,omitempty"`
	MediaID    *int64 `json:"media_id,omitempty"`
}

// UpdateQuestionRequest replaces a question's fields. The quiz it belongs
// to is fixed at creation.
type UpdateQuestionRequest struct {
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	TimeLimit    int    `json:"time_limit"`
	Points       int    `json:"points"`
	SortOrder    int    `json:"sort_order"`
	MediaID      *int64 `json:"media_id,omitempty"`
}

type UpdateAnswerRequest struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  int    `json:"sort_order"`
	MediaID    *int64 `json:"media_id,omitempty"`
}

type CreateStoryRequest struct {
	CreatorID int64  `json:"creator_id"`
	Title     string `json:"title"`
}

type AddStoryContentRequest struct {
	SortOrder *int   `json:"sort_order,omitempty"`
	Body      string `json:"body"`
	MediaID   *int64 `json:"media_id,omitempty"`
}

type CreateCourseRequest struct {
	CreatorID   int64   `json:"creator_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type AddCourseContentRequest struct {
	ContentType  string `json:"content_type"`
	ContentID    int64  `json:"content_id"`
	ContentOrder *int   `json:"content_order,omitempty"`
}

type CreateSessionRequest struct {
	QuizID int64 `json:"quiz_id"`
	HostID int64 `json:"host_id"`
}

type JoinSessionRequest struct {
	UserID   *int64 `json:"user_id,omitempty"`
	Nickname string `json:"nickname"`
}

type SubmitAnswerRequest struct {
	QuestionID     int64    `json:"question_id"`
	ChosenAnswerID *int64   `json:"chosen_answer_id,omitempty"`
	SliderValue    *float64 `json:"slider_value,omitempty"`
}

type UpdateScoreRequest struct {
	Score int `json:"score"`
}

type CreateDocumentRequest struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

type CreateSupportCaseRequest struct {
	UserID  *int64 `json:"user_id,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type PatchSupportCaseRequest struct {
	Status string `json:"status"`
}

// Response types

type CreateSessionResponse struct {
	Session GameSession `json:"session"`
	HostKey string      `json:"host_key"`
}

type JoinSessionResponse struct {
	Participant      SessionParticipant `json:"participant"`
	ParticipantToken string             `json:"participant_token"`
}

type SubmitAnswerResponse struct {
	ParticipantAnswerID int64 `json:"participant_answer_id"`
	IsCorrect           bool  `json:"is_correct"`
	PointsAwarded       int   `json:"points_awarded"`
	TotalScore          int   `json:"total_score"`
}

type LeaderboardEntry struct {
	ParticipantID int64  `json:"participant_id"`
	Nickname      string `json:"nickname"`
	Score         int    `json:"score"`
	Rank          int    `json:"rank"` // 1-indexed, dense
}

// DocumentListing wraps a document with a display-friendly size.
type DocumentListing struct {
	Document
	SizeHuman string `json:"size_human"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type User struct {
	UserID                int64     `json:"user_id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"` // Never expose in JSON
	Language              string    `json:"language"`
	IsVerified            bool      `json:"is_verified"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	CurrentSubscriptionID *int64    `json:"current_subscription_id,omitempty"`
}

type StudentProfile struct {
	UserID     int64  `json:"user_id"`
	TeacherID  *int64 `json:"teacher_id,omitempty"`
	GradeLevel string `json:"grade_level"`
}

type TeacherProfile struct {
	UserID     int64  `json:"user_id"`
	SchoolName string `json:"school_name"`
	Subject    string `json:"subject"`
}

type CompanyProfile struct {
	UserID      int64  `json:"user_id"`
	CompanyName string `json:"company_name"`
	OrgNumber   string `json:"org_number"`
}

type Role struct {
	RoleID      int64   `json:"role_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Permission struct {
	PermissionID int64   `json:"permission_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
}

type Media struct {
	MediaID   int64     `json:"media_id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`

	Image *MediaImageDetail `json:"image,omitempty"`
	Video *MediaVideoDetail `json:"video,omitempty"`
	Gif   *MediaGifDetail   `json:"gif,omitempty"`
}

type MediaImageDetail struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AltText string `json:"alt_text"`
}

type MediaVideoDetail struct {
	DurationSeconds int    `json:"duration_seconds"`
	Resolution      string `json:"resolution"`
}

type MediaGifDetail struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	LoopCount int `json:"loop_count"`
}

type SubscriptionPlan struct {
	PlanID      int64   `json:"plan_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
}

type Feature struct {
	FeatureID   int64   `json:"feature_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type PlanFeature struct {
	PlanID    int64  `json:"plan_id"`
	FeatureID int64  `json:"feature_id"`
	Value     string `json:"value"`
}

type Subscription struct {
	SubscriptionID int64      `json:"subscription_id"`
	UserID         int64      `json:"user_id"`
	PlanID         int64      `json:"plan_id"`
	Status         string     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type Payment struct {
	PaymentID      int64     `json:"payment_id"`
	SubscriptionID int64     `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	TransactionRef string    `json:"transaction_ref"`
	PaidAt         time.Time `json:"paid_at"`
}

type CreationMethod struct {
	CreationMethodID int64  `json:"creation_method_id"`
	Name             string `json:"name"`
}

type Quiz struct {
	QuizID           int64  `json:"quiz_id"`
	Name             string `json:"name"`
	CreationMethodID *int64 `json:"creation_method_id,omitempty"`
	CreatorID        int64  `json:"creator_id"`
	MediaID          *int64 `json:"media_id,omitempty"`
}

type QuizQuestion struct {
	QuestionID   int64  `json:"question_id"`
	QuizID       int64  `json:"quiz_id"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	TimeLimit    int    `json:"time_limit"`
	Points       int    `json:"points"`
	SortOrder    int    `json:"sort_order"`
	MediaID      *int64 `json:"media_id,omitempty"`
}

type QuizAnswer struct {
	AnswerID   int64  `json:"answer_id"`
	QuestionID int64  `json:"question_id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  int    `json:"sort_order"`
	MediaID    *int64 `json:"media_id,omitempty"`
}

type Story struct {
	StoryID   int64     `json:"story_id"`
	CreatorID int64     `json:"creator_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type StoryContent struct {
	ContentID int64  `json:"content_id"`
	StoryID   int64  `json:"story_id"`
	SortOrder int    `json:"sort_order"`
	Body      string `json:"body"`
	MediaID   *int64 `json:"media_id,omitempty"`
}

type StoryWithContents struct {
	Story    Story          `json:"story"`
	Contents []StoryContent `json:"contents"`
}

type Course struct {
	CourseID    int64     `json:"course_id"`
	CreatorID   int64     `json:"creator_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CourseContent struct {
	CourseContentID int64  `json:"course_content_id"`
	CourseID        int64  `json:"course_id"`
	ContentType     string `json:"content_type"`
	ContentID       int64  `json:"content_id"`
	ContentOrder    int    `json:"content_order"`
}

type CourseWithContents struct {
	Course   Course          `json:"course"`
	Contents []CourseContent `json:"contents"`
}

type GameSession struct {
	SessionID            int64      `json:"session_id"`
	QuizID               int64      `json:"quiz_id"`
	HostID               int64      `json:"host_id"`
	AccessCode           string     `json:"access_code"`
	StartedAt            time.Time  `json:"started_at"`
	EndedAt              *time.Time `json:"ended_at,omitempty"`
	CurrentQuestionIndex int        `json:"current_question_index"`
}

type SessionParticipant struct {
	ParticipantID int64     `json:"participant_id"`
	SessionID     int64     `json:"session_id"`
	UserID        *int64    `json:"user_id,omitempty"`
	Nickname      string    `json:"nickname"`
	Score         int       `json:"score"`
	JoinedAt      time.Time `json:"joined_at"`
}

type ParticipantAnswer struct {
	ParticipantAnswerID int64     `json:"participant_answer_id"`
	ParticipantID       int64     `json:"participant_id"`
	QuestionID          int64     `json:"question_id"`
	ChosenAnswerID      *int64    `json:"chosen_answer_id,omitempty"`
	SliderValue         *float64  `json:"slider_value,omitempty"`
	IsCorrect           bool      `json:"is_correct"`
	PointsAwarded       int       `json:"points_awarded"`
	AnsweredAt          time.Time `json:"answered_at"`
}

type Document struct {
	DocumentID int64     `json:"document_id"`
	UserID     int64     `json:"user_id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	StorageKey string    `json:"storage_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type SupportCase struct {
	CaseID    int64     `json:"case_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
