// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest / UpdateUserRequest / PatchUserRequest
  - CreateMediaRequest: type discriminant plus subtype fields
  - CreateSubscriptionRequest, PatchSubscriptionRequest, CreatePaymentRequest
  - CreateQuizRequest, CreateQuestionRequest, CreateAnswerRequest
  - UpdateQuizRequest, UpdateQuestionRequest, UpdateAnswerRequest
  - CreateStoryRequest, AddStoryContentRequest
  - CreateCourseRequest, AddCourseContentRequest
  - CreateSessionRequest, JoinSessionRequest, SubmitAnswerRequest
  - CreateDocumentRequest, CreateSupportCaseRequest

Optional fields are pointers so absent and zero stay distinguishable.

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session, host_key
  - JoinSessionResponse: participant, participant_token
  - SubmitAnswerResponse: is_correct, points_awarded, total_score
  - LeaderboardEntry: nickname, score, dense rank
  - DocumentListing: document plus human-readable size
  - MessageResponse, ErrorResponse

# Domain Types

Internal data structures mirror the tables one to one: User, Media with
its subtype details, SubscriptionPlan, Subscription, Payment, Quiz,
QuizQuestion, QuizAnswer, Story, Course, GameSession,
SessionParticipant, ParticipantAnswer, Document, SupportCase.

User.PasswordHash is tagged json:"-" and never serialized.

# Constants

Media types:

	MediaImage = "image"
	MediaVideo = "video"
	MediaGif   = "gif"

Subscription statuses:

	SubStatusActive    = "active"
	SubStatusCancelled = "cancelled"
	SubStatusExpired   = "expired"

Question types:

	QuestionMultipleChoice = "multiple_choice"
	QuestionBoolean        = "boolean"
	QuestionSlider         = "slider"

Course content types:

	ContentStory = "story"
	ContentQuiz  = "quiz"
	ContentMedia = "media"

Support case statuses:

	CaseOpen   = "open"
	CaseClosed = "closed"
*/
package models
