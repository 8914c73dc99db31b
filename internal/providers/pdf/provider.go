package pdf

import (
	"context"
	"io"

	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	"go.uber.org/fx"
)

// Provider renders settlement receipts for download. The reconciliation
// engine only produces the Receipt value; rendering lives here.
type Provider interface {
	GenerateReceipt(ctx context.Context, receipt reconciledomain.Receipt) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(NewProvider),
)
