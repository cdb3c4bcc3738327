package mocks

import (
	"context"

	"agenda/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type txRunnerImpl struct {
	err error
}

// WithTx implements postgres.TxRunner. The callback receives a nil transaction;
// repository calls inside it are expected to be mocked.
func (t *txRunnerImpl) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if t.err != nil {
		return t.err
	}

	return fn(nil)
}

func NewTxRunner() postgres.TxRunner {
	return &txRunnerImpl{}
}

func NewTxRunnerWithError(err error) postgres.TxRunner {
	return &txRunnerImpl{err: err}
}
