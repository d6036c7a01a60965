// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quizroom API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Users and profiles:

	POST   /users              - Create user
	GET    /users              - List users (?active= filter)
	GET    /users/{id}         - Get user
	PUT    /users/{id}         - Replace user
	PATCH  /users/{id}         - Partial update
	DELETE /users/{id}         - Delete user
	POST   /users/{id}/student - Attach student profile
	POST   /users/{id}/teacher - Attach teacher profile
	POST   /users/{id}/company - Attach company profile
	POST   /users/{id}/roles   - Assign role
	GET    /users/{id}/roles   - List assigned roles

Access control:

	POST   /roles                  - Create role
	GET    /roles                  - List roles
	PUT    /roles/{id}             - Update role
	DELETE /roles/{id}             - Delete role
	POST   /permissions            - Create permission
	GET    /permissions            - List permissions
	POST   /roles/{id}/permissions - Grant permission to role

Media:

	POST   /media      - Create media with subtype
	GET    /media/{id} - Get media with subtype detail
	DELETE /media/{id} - Delete media

Billing:

	POST  /plans                       - Create plan
	GET   /plans                       - List plans
	POST  /features                    - Create feature
	GET   /features                    - List features
	POST  /plans/{id}/features         - Set feature override on plan
	POST  /subscriptions               - Create subscription (sets user's current)
	GET   /users/{id}/subscriptions    - List a user's subscriptions
	PATCH /subscriptions/{id}          - Change status
	POST  /subscriptions/{id}/payments - Record payment

Quiz authoring:

	POST   /quizzes                - Create quiz
	GET    /quizzes                - List quizzes (?creator_id= filter)
	GET    /quizzes/{id}           - Get quiz
	PUT    /quizzes/{id}           - Update quiz
	DELETE /quizzes/{id}           - Delete quiz
	GET    /quizzes/{id}/questions - List questions in order
	POST   /questions              - Create question
	PUT    /questions/{id}         - Update question
	DELETE /questions/{id}         - Delete question
	GET    /questions/{id}/answers - List answers in order
	POST   /answers                - Create answer
	PUT    /answers/{id}           - Update answer
	DELETE /answers/{id}           - Delete answer
	GET    /creation-methods       - List quiz creation methods

Stories and courses:

	POST   /stories                           - Create story
	GET    /stories                           - List stories
	GET    /stories/{id}                      - Story with ordered contents
	DELETE /stories/{id}                      - Delete story
	POST   /stories/{id}/contents             - Add content block
	DELETE /stories/{id}/contents/{contentID} - Remove content block
	POST   /courses                           - Create course
	GET    /courses                           - List courses
	GET    /courses/{id}                      - Course with ordered contents
	DELETE /courses/{id}                      - Delete course
	POST   /courses/{id}/contents             - Add content entry
	DELETE /courses/{id}/contents/{contentID} - Remove content entry

Live sessions (host operations require X-Host-Key, answers require
X-Participant-Token):

	POST   /sessions                                        - Start session (returns host_key)
	GET    /sessions/{id}                                   - Get session
	GET    /sessions/code/{code}                            - Lookup by access code
	DELETE /sessions/{id}                                   - Delete session (host)
	POST   /sessions/{id}/join                              - Join (returns participant_token)
	GET    /sessions/{id}/participants                      - List participants
	POST   /sessions/{id}/participants/{pid}/answers        - Submit answer
	GET    /sessions/{id}/participants/{pid}/answers        - Answer history
	PATCH  /sessions/{id}/participants/{pid}/score          - Set score (host)
	DELETE /sessions/{id}/participants/{pid}                - Remove participant (host)
	POST   /sessions/{id}/advance                           - Next question (host)
	POST   /sessions/{id}/end                               - End session (host)
	GET    /sessions/{id}/leaderboard                       - Ranked scores

Documents and support:

	POST   /users/{id}/documents - Register document
	GET    /users/{id}/documents - List documents
	DELETE /documents/{id}       - Delete document
	POST   /support-cases        - Open support case
	GET    /support-cases        - List cases (?status= filter)
	PATCH  /support-cases/{id}   - Open/close case

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
