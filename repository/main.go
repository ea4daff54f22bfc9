package repository

import (
	"github.com/haneulab/thumbsmith-api/infra"
)

type Repository struct {
	ThumbnailRepo *ThumbnailRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		ThumbnailRepo: NewThumbnailRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}
