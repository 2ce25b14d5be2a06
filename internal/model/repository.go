package model

import "time"

// Repository is the raw record handed to the categorizer and the
// book transformer. Only Name is guaranteed; everything else may be
// empty when the source did not provide it.
type Repository struct {
	Name        string
	FullName    string
	Description string
	Language    string
	Topics      []string
	Files       []string
	Readme      string
	Owner       string
	Stars       int
	Forks       int
	Watchers    int
	OpenIssues  int
	License     string
	Private     bool
	HTMLURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
