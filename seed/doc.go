// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed loads baseline fixtures for local development and demos.

Run is invoked from main when the server starts with -seed:

	quizroom -d quizroom.db -t sqlite -seed

It fills every table: roles and permissions with grants, media of all
three subtypes, the plan/feature catalog, a teacher/student/company
trio of users, an active subscription with a payment (back-patched as
the user's current subscription), a playable quiz with all three
question types, a story, a course referencing story/quiz/media, a live
session with participants and one scored answer, a document, and an
open support case.

Everything runs inside a single transaction; a failure leaves the
database untouched. Run assumes an empty database and reports unique
violations as errors rather than skipping them.
*/
package seed
