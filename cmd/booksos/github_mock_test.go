package main

import (
	"context"

	"github.com/ItsTraderbaby/books-os/internal/github"
	"github.com/ItsTraderbaby/books-os/internal/model"
)

// mockGitHubClient implements github.GitHubClient for testing
type mockGitHubClient struct {
	fetchRepositoriesFunc func(github.FetchOptions) ([]model.Repository, error)
	fetchReadmesFunc      func([]model.Repository) []model.Repository
	testConnectionFunc    func() error
	getUsernameFunc       func() (string, error)
}

func (m *mockGitHubClient) FetchRepositories(ctx context.Context, opts github.FetchOptions) ([]model.Repository, error) {
	if m.fetchRepositoriesFunc != nil {
		return m.fetchRepositoriesFunc(opts)
	}
	return []model.Repository{}, nil
}

func (m *mockGitHubClient) FetchReadmes(ctx context.Context, repos []model.Repository) []model.Repository {
	if m.fetchReadmesFunc != nil {
		return m.fetchReadmesFunc(repos)
	}
	return repos
}

func (m *mockGitHubClient) TestConnection(ctx context.Context) error {
	if m.testConnectionFunc != nil {
		return m.testConnectionFunc()
	}
	return nil
}

func (m *mockGitHubClient) GetCurrentUsername(ctx context.Context) (string, error) {
	if m.getUsernameFunc != nil {
		return m.getUsernameFunc()
	}
	return "", nil
}
