// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/policy"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/testutil"
)

func seedPost(t *testing.T, q *store.Queries, title, slug, author, status string) model.Post {
	t.Helper()
	post, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Title:  title,
		Slug:   slug,
		Body:   model.RichText(`"<p>body</p>"`),
		Status: status,
		Author: author,
	})
	require.NoError(t, err)
	return post
}

func TestScopedPostReads(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	mine := seedPost(t, q, "Mine", "mine", "author-1", "draft")
	theirs := seedPost(t, q, "Theirs", "theirs", "author-2", "draft")

	scoped := policy.AllowWhere(policy.FieldAuthor, "author-1")

	got, err := q.GetPost(ctx, mine.ID, scoped)
	require.NoError(t, err)
	require.Equal(t, "Mine", got.Title)

	// A row outside the scope is indistinguishable from a missing row.
	_, err = q.GetPost(ctx, theirs.ID, scoped)
	require.ErrorIs(t, err, store.ErrNotFound)

	posts, err := q.ListPosts(ctx, scoped, 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, mine.ID, posts[0].ID)

	all, err := q.ListPosts(ctx, policy.Allow(), 20, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDeniedDecisionShortCircuits(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	post := seedPost(t, q, "Post", "post", "author-1", "published")

	_, err := q.GetPost(ctx, post.ID, policy.Deny())
	require.ErrorIs(t, err, store.ErrDenied)

	_, err = q.ListPosts(ctx, policy.Deny(), 20, 0)
	require.ErrorIs(t, err, store.ErrDenied)

	err = q.DeletePost(ctx, post.ID, policy.Deny())
	require.ErrorIs(t, err, store.ErrDenied)

	// The row survives a denied delete.
	_, err = q.GetPost(ctx, post.ID, policy.Allow())
	require.NoError(t, err)
}

func TestScopedPostWrites(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	mine := seedPost(t, q, "Mine", "mine", "author-1", "draft")
	theirs := seedPost(t, q, "Theirs", "theirs", "author-2", "draft")

	scoped := policy.AllowWhere(policy.FieldAuthor, "author-1")

	updated, err := q.UpdatePost(ctx, store.UpdatePostParams{
		ID:     mine.ID,
		Title:  "Mine v2",
		Slug:   "mine",
		Body:   mine.Body,
		Status: "published",
	}, scoped)
	require.NoError(t, err)
	require.Equal(t, "Mine v2", updated.Title)
	require.Equal(t, "published", updated.Status)

	_, err = q.UpdatePost(ctx, store.UpdatePostParams{
		ID:     theirs.ID,
		Title:  "Hijacked",
		Slug:   "theirs",
		Body:   theirs.Body,
		Status: "draft",
	}, scoped)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = q.DeletePost(ctx, theirs.ID, scoped)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = q.DeletePost(ctx, mine.ID, scoped)
	require.NoError(t, err)
	_, err = q.GetPost(ctx, mine.ID, policy.Allow())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnsupportedScopeFieldRejected(t *testing.T) {
	q := testutil.TestQueries(t)

	_, err := q.ListPosts(context.Background(), policy.AllowWhere("role", "admin"), 20, 0)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrDenied)
}

func TestGlobalPageUpsertPreservesContent(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	require.NoError(t, q.UpsertGlobalPage(ctx, "about", "About"))

	sections := []model.Section{{
		Title:    "Vision",
		Type:     model.SectionRichText,
		Order:    0,
		IsActive: true,
		Content:  model.RichTextContent{Body: model.RichText(`"Our vision"`)},
	}}
	require.NoError(t, q.UpdateGlobalPageSections(ctx, "about", sections))

	// Re-seeding refreshes the title only.
	require.NoError(t, q.UpsertGlobalPage(ctx, "about", "About Us"))

	page, err := q.GetGlobalPage(ctx, "about")
	require.NoError(t, err)
	require.Equal(t, "About Us", page.Title)
	require.Len(t, page.Sections, 1)
	require.Equal(t, "Vision", page.Sections[0].Title)
}

func TestGlobalPageFieldUpdate(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	require.NoError(t, q.UpsertGlobalPage(ctx, "about", "About"))

	payload := json.RawMessage(`{"established":"1998","body":"<p>History.</p>"}`)
	require.NoError(t, q.UpdateGlobalPageField(ctx, "about", "profile", payload))

	page, err := q.GetGlobalPage(ctx, "about")
	require.NoError(t, err)
	require.JSONEq(t, string(payload), string(page.Field("profile")))

	err = q.UpdateGlobalPageField(ctx, "no-such-page", "profile", payload)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDynamicPagePublishedLookup(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	draft, err := q.CreateDynamicPage(ctx, store.CreateDynamicPageParams{
		Slug:        "admissions-2026",
		Title:       "Admissions 2026",
		IsPublished: false,
	})
	require.NoError(t, err)

	_, err = q.GetPublishedDynamicPageBySlug(ctx, "admissions-2026")
	require.ErrorIs(t, err, store.ErrNotFound)

	exists, err := q.DynamicPageSlugExists(ctx, "admissions-2026", 0)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = q.DynamicPageSlugExists(ctx, "admissions-2026", draft.ID)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = q.UpdateDynamicPage(ctx, store.UpdateDynamicPageParams{
		ID:          draft.ID,
		Slug:        "admissions-2026",
		Title:       "Admissions 2026",
		IsPublished: true,
	})
	require.NoError(t, err)

	page, err := q.GetPublishedDynamicPageBySlug(ctx, "admissions-2026")
	require.NoError(t, err)
	require.True(t, page.IsPublished)
}

func TestScopedUserList(t *testing.T) {
	q := testutil.TestQueries(t)
	ctx := context.Background()

	self, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "self@example.edu", Name: "Self", PasswordHash: "x", Role: model.RoleBlogger,
	})
	require.NoError(t, err)
	_, err = q.CreateUser(ctx, store.CreateUserParams{
		Email: "other@example.edu", Name: "Other", PasswordHash: "x", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	users, err := q.ListUsers(ctx, policy.AllowWhere(policy.FieldUserID, self.ID))
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, self.ID, users[0].ID)

	all, err := q.ListUsers(ctx, policy.Allow())
	require.NoError(t, err)
	require.Len(t, all, 2)
}
