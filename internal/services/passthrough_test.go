package services

import (
	"context"

	"github.com/golang/mock/gomock"
)

func passthroughTx(ctrl *gomock.Controller) *MockTxRunner {
	tx := NewMockTxRunner(ctrl)
	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()
	return tx
}
