package models

import (
	"time"
)

// PostView is the response shape for a post.
type PostView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	Likes     int64     `json:"likes"`
	IsPinned  bool      `json:"is_pinned"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is the response shape for a comment. PostTitle is carried so
// comment listings are readable without a second lookup.
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	PostTitle string    `json:"post_title"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Likes     int64     `json:"likes"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserView is the response shape for a user profile. The liked counts are
// read-side aggregations over the like ledgers, not stored state.
type UserView struct {
	ID                 uint      `json:"id"`
	LoginID            string    `json:"login_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	Intro              string    `json:"intro"`
	Role               UserRole  `json:"role"`
	IsBlocked          bool      `json:"is_blocked"`
	LikedPostsCount    int64     `json:"liked_posts_count"`
	LikedCommentsCount int64     `json:"liked_comments_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewPostView builds a PostView from a loaded post.
func NewPostView(p *Post) PostView {
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Username:  p.User.Username,
		Likes:     p.Likes,
		IsPinned:  p.IsPinned,
		Liked:     p.Liked,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPostViews maps a post slice into views.
func NewPostViews(posts []*Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return views
}

// NewCommentView builds a CommentView from a comment with its Post and User
// associations loaded.
func NewCommentView(cm *Comment) CommentView {
	return CommentView{
		ID:        cm.ID,
		PostID:    cm.PostID,
		PostTitle: cm.Post.Title,
		Content:   cm.Content,
		UserID:    cm.UserID,
		Username:  cm.User.Username,
		Likes:     cm.Likes,
		Liked:     cm.Liked,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

// NewCommentViews maps a comment slice into views.
func NewCommentViews(comments []*Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, NewCommentView(cm))
	}
	return views
}

// NewUserView builds a UserView with the caller-supplied like aggregations.
func NewUserView(u *User, likedPosts, likedComments int64) UserView {
	return UserView{
		ID:                 u.ID,
		LoginID:            u.LoginID,
		Username:           u.Username,
		Email:              u.Email,
		Intro:              u.Intro,
		Role:               u.Role,
		IsBlocked:          u.IsBlocked,
		LikedPostsCount:    likedPosts,
		LikedCommentsCount: likedComments,
		CreatedAt:          u.CreatedAt,
	}
}
