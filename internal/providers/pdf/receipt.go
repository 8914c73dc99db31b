package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func NewProvider() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReceipt(ctx context.Context, receipt reconciledomain.Receipt) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(30,
		text.NewCol(8, "Comprobante de Pago", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, receipt.Number, props.Text{
			Size:  9,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Fecha: "+receipt.Date.Format("2006-01-02"), props.Text{Top: 0}),
			text.New("Período: "+receipt.Period, props.Text{Top: 4}),
			text.New("Alumno: "+receipt.MemberName, props.Text{Top: 8}),
		),
		col.New(6),
	)

	m.AddRow(15,
		text.NewCol(12, formatAmount(receipt.Amount)+" abonado el "+receipt.Date.Format("2006-01-02"), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	m.AddRow(10,
		text.NewCol(6, "Concepto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Método", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Importe", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(15,
		text.NewCol(6, receipt.Concept, props.Text{Size: 9}),
		text.NewCol(3, receipt.Method, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, formatAmount(receipt.Amount), props.Text{Size: 9, Align: align.Right}),
	)

	if receipt.Note != "" {
		m.AddRow(15,
			text.NewCol(12, "Nota: "+receipt.Note, props.Text{Size: 9, Top: 3}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func formatAmount(amount int64) string {
	return fmt.Sprintf("$%d", amount)
}
