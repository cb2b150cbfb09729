// Package store defines the durable post archive the collector writes
// into and analysis tools can read back.
package store

import (
	"context"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
)

// Store is the interface for persisting collected posts.
type Store interface {
	Close() error

	// UpsertPost inserts or replaces a post, keyed by its id. Posts
	// with an empty id are ignored.
	UpsertPost(ctx context.Context, p dataset.Post) error
	// GetPost fetches one post by id; internalerr.ErrNotFound when
	// absent.
	GetPost(ctx context.Context, id string) (dataset.Post, error)
	// ListPosts returns posts for a crisis (empty id for all),
	// time-ordered ascending, up to limit (0 for no limit).
	ListPosts(ctx context.Context, crisisID string, limit int) ([]dataset.Post, error)
	// CountPosts returns the number of archived posts for a crisis
	// (empty id for all).
	CountPosts(ctx context.Context, crisisID string) (int, error)
	// Crises returns the distinct crisis ids present, sorted.
	Crises(ctx context.Context) ([]string, error)
}

// LoadDataset reads a crisis's archive into an in-memory dataset with
// the full column set present.
func LoadDataset(ctx context.Context, s Store, crisisID string) (*dataset.Dataset, error) {
	posts, err := s.ListPosts(ctx, crisisID, 0)
	if err != nil {
		return nil, err
	}
	ds := dataset.New(
		dataset.ColPostID, dataset.ColTitle, dataset.ColContent,
		dataset.ColAuthor, dataset.ColSubreddit, dataset.ColCreatedUTC,
		dataset.ColScore, dataset.ColNumComments, dataset.ColUpvoteRatio,
		dataset.ColCrisisID, dataset.ColURL, dataset.ColContentHash,
	)
	ds.Posts = posts
	return ds, nil
}
