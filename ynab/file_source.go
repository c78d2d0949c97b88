package ynab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// budgetSnapshot is the on-disk layout of an exported budget.
type budgetSnapshot struct {
	Accounts     []AccountRecord     `json:"accounts"`
	Categories   []CategoryRecord    `json:"categories"`
	Transactions []TransactionRecord `json:"transactions"`
}

// FileSource serves budget data from a JSON export on disk. The file is
// read once per call so a refreshed export takes effect without a restart.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by a JSON budget export
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Accounts(ctx context.Context) ([]AccountRecord, error) {
	snapshot, err := s.read()
	if err != nil {
		return nil, err
	}
	return snapshot.Accounts, nil
}

func (s *FileSource) Categories(ctx context.Context) ([]CategoryRecord, error) {
	snapshot, err := s.read()
	if err != nil {
		return nil, err
	}
	return snapshot.Categories, nil
}

func (s *FileSource) Transactions(ctx context.Context, since time.Time) ([]TransactionRecord, error) {
	snapshot, err := s.read()
	if err != nil {
		return nil, err
	}
	var filtered []TransactionRecord
	for _, txn := range snapshot.Transactions {
		if !txn.Date.Before(since) {
			filtered = append(filtered, txn)
		}
	}
	return filtered, nil
}

func (s *FileSource) read() (*budgetSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget file %s: %w", s.path, err)
	}
	var snapshot budgetSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse budget file %s: %w", s.path, err)
	}
	return &snapshot, nil
}
