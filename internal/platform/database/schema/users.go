// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table             string
	ID                string
	Username          string
	Email             string
	Password          string
	Bio               string
	ProfilePictureURL string
	CreatedAt         string
	UpdatedAt         string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:             "users.account",
	ID:                "id",
	Username:          "username",
	Email:             "email",
	Password:          "passwordhash",
	Bio:               "bio",
	ProfilePictureURL: "profilepictureurl",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.Bio, t.ProfilePictureURL, t.CreatedAt, t.UpdatedAt}
}

// UserActivityTable represents the 'users.activity' table
type UserActivityTable struct {
	Table              string
	ID                 string
	UserID             string
	MediaID            string
	MediaTitle         string
	MediaCoverImageURL string
	MediaType          string
	Action             string
	Status             string
	Progress           string
	CreatedAt          string
}

// UserActivity is the schema definition for users.activity
var UserActivity = UserActivityTable{
	Table:              "users.activity",
	ID:                 "id",
	UserID:             "userid",
	MediaID:            "mediaid",
	MediaTitle:         "mediatitle",
	MediaCoverImageURL: "mediacoverimageurl",
	MediaType:          "mediatype",
	Action:             "action",
	Status:             "status",
	Progress:           "progress",
	CreatedAt:          "createdat",
}

// Columns returns all standard column names
func (t UserActivityTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.MediaID, t.MediaTitle, t.MediaCoverImageURL,
		t.MediaType, t.Action, t.Status, t.Progress, t.CreatedAt,
	}
}
