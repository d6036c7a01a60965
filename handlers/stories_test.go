// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hannalind/quizroom/models"
	"github.com/hannalind/quizroom/testutil"
)

func createTestStory(t *testing.T, db *sql.DB, h *StoryHandler, creatorID int64) models.Story {
	t.Helper()

	w := httptest.NewRecorder()
	h.CreateStory(w, testutil.MakeRequest("POST", "/stories",
		models.CreateStoryRequest{CreatorID: creatorID, Title: "Why Capitals Move"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var story models.Story
	testutil.AssertJSON(t, w, &story)
	return story
}

func TestCreateStory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStoryHandler(db, testutil.GetTestConfig())

	creatorID := testutil.CreateTestUser(t, db)

	story := createTestStory(t, db, handler, creatorID)
	if story.Title != "Why Capitals Move" {
		t.Errorf("Expected title back, got %q", story.Title)
	}

	t.Run("missing title", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateStory(w, testutil.MakeRequest("POST", "/stories",
			models.CreateStoryRequest{CreatorID: creatorID}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown creator", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateStory(w, testutil.MakeRequest("POST", "/stories",
			models.CreateStoryRequest{CreatorID: 99999, Title: "Orphan"}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetStory_ContentsOrdered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStoryHandler(db, testutil.GetTestConfig())

	creatorID := testutil.CreateTestUser(t, db)
	story := createTestStory(t, db, handler, creatorID)
	idStr := strconv.FormatInt(story.StoryID, 10)

	add := func(body string, sortOrder int) {
		req := testutil.MakeRequest("POST", "/stories/"+idStr+"/contents",
			models.AddStoryContentRequest{Body: body, SortOrder: intPtr(sortOrder)}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.AddContent(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}
	add("closing", 3)
	add("opening", 1)
	add("middle", 2)

	req := testutil.MakeRequest("GET", "/stories/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.GetStory(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StoryWithContents
	testutil.AssertJSON(t, w, &resp)
	if resp.Story.StoryID != story.StoryID {
		t.Errorf("Expected story %d, got %d", story.StoryID, resp.Story.StoryID)
	}
	if len(resp.Contents) != 3 {
		t.Fatalf("Expected 3 content blocks, got %d", len(resp.Contents))
	}
	for i, body := range []string{"opening", "middle", "closing"} {
		if resp.Contents[i].Body != body {
			t.Errorf("Block %d: expected %q, got %q", i, body, resp.Contents[i].Body)
		}
	}
}

func TestDeleteStoryContent_ScopedToStory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStoryHandler(db, testutil.GetTestConfig())

	creatorID := testutil.CreateTestUser(t, db)
	story := createTestStory(t, db, handler, creatorID)
	other := createTestStory(t, db, handler, creatorID)

	idStr := strconv.FormatInt(story.StoryID, 10)
	req := testutil.MakeRequest("POST", "/stories/"+idStr+"/contents",
		models.AddStoryContentRequest{Body: "block"}, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	handler.AddContent(w, req)

	var content models.StoryContent
	testutil.AssertJSON(t, w, &content)
	contentStr := strconv.FormatInt(content.ContentID, 10)

	// Deleting through the wrong story is a 404
	otherStr := strconv.FormatInt(other.StoryID, 10)
	req = testutil.MakeRequest("DELETE", "/stories/"+otherStr+"/contents/"+contentStr, nil, nil)
	req.SetPathValue("id", otherStr)
	req.SetPathValue("contentID", contentStr)
	w = httptest.NewRecorder()
	handler.DeleteContent(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	req = testutil.MakeRequest("DELETE", "/stories/"+idStr+"/contents/"+contentStr, nil, nil)
	req.SetPathValue("id", idStr)
	req.SetPathValue("contentID", contentStr)
	w = httptest.NewRecorder()
	handler.DeleteContent(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestDeleteStory_CascadesToContents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewStoryHandler(db, testutil.GetTestConfig())

	creatorID := testutil.CreateTestUser(t, db)
	story := createTestStory(t, db, handler, creatorID)
	idStr := strconv.FormatInt(story.StoryID, 10)

	req := testutil.MakeRequest("POST", "/stories/"+idStr+"/contents",
		models.AddStoryContentRequest{Body: "block"}, nil)
	req.SetPathValue("id", idStr)
	handler.AddContent(httptest.NewRecorder(), req)

	req = testutil.MakeRequest("DELETE", "/stories/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	handler.DeleteStory(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var count int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM story_content WHERE story_id = $1
	`, story.StoryID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected contents gone with the story, found %d", count)
	}
}
