package qrcode

import (
	"context"
	"testing"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQRRepo struct {
	codes   map[string]*models.QRCode
	created []*models.QRCode
}

func newFakeQRRepo() *fakeQRRepo {
	return &fakeQRRepo{codes: make(map[string]*models.QRCode)}
}

func (r *fakeQRRepo) Create(ctx context.Context, qr *models.QRCode) error {
	r.codes[qr.QRCodeNumber] = qr
	r.created = append(r.created, qr)
	return nil
}

func (r *fakeQRRepo) GetActiveByNumber(ctx context.Context, number string) (*models.QRCode, error) {
	qr, ok := r.codes[number]
	if !ok || !qr.IsActive {
		return nil, repositories.ErrQRCodeNotFound
	}
	return qr, nil
}

func (r *fakeQRRepo) Deactivate(ctx context.Context, number string) error {
	qr, ok := r.codes[number]
	if !ok {
		return repositories.ErrQRCodeNotFound
	}
	qr.IsActive = false
	return nil
}

func (r *fakeQRRepo) List(ctx context.Context, limit, offset int) ([]models.QRCode, int64, error) {
	var out []models.QRCode
	for _, qr := range r.codes {
		out = append(out, *qr)
	}
	return out, int64(len(out)), nil
}

type fakeCounter struct {
	seq int
}

func (c *fakeCounter) Next(ctx context.Context, name string) (int, error) {
	c.seq++
	if c.seq > models.MaxSequence {
		c.seq = 1
	}
	return c.seq, nil
}

func (c *fakeCounter) Current(ctx context.Context, name string) (int, error) {
	return c.seq, nil
}

func TestGenerateAssignsPaddedNumbers(t *testing.T) {
	repo := newFakeQRRepo()
	svc := NewService(repo, &fakeCounter{})

	qr, err := svc.Generate(context.Background(), "admin", models.RegionWanChai, models.ProductShake, 50)
	require.NoError(t, err)
	assert.Equal(t, "0001", qr.QRCodeNumber)
	assert.True(t, qr.IsActive)
	assert.Equal(t, "admin", qr.CreatedBy)

	qr, err = svc.Generate(context.Background(), "admin", models.RegionShekMun, models.ProductTea, 30)
	require.NoError(t, err)
	assert.Equal(t, "0002", qr.QRCodeNumber)
}

func TestGenerateWrapsAfterMaxSequence(t *testing.T) {
	repo := newFakeQRRepo()
	svc := NewService(repo, &fakeCounter{seq: models.MaxSequence - 1})

	qr, err := svc.Generate(context.Background(), "admin", models.RegionWanChai, models.ProductShake, 50)
	require.NoError(t, err)
	assert.Equal(t, "9999", qr.QRCodeNumber)

	qr, err = svc.Generate(context.Background(), "admin", models.RegionWanChai, models.ProductShake, 50)
	require.NoError(t, err)
	assert.Equal(t, "0001", qr.QRCodeNumber)
}

func TestGenerateRejectsUnknownInputs(t *testing.T) {
	svc := NewService(newFakeQRRepo(), &fakeCounter{})

	_, err := svc.Generate(context.Background(), "admin", "XX", models.ProductShake, 50)
	assert.Equal(t, domainErrors.ErrInvalidRegion, err)

	_, err = svc.Generate(context.Background(), "admin", models.RegionWanChai, "咖啡", 50)
	assert.Equal(t, domainErrors.ErrInvalidProduct, err)
}

func TestCurrentNumberPeeksWithoutMutating(t *testing.T) {
	counter := &fakeCounter{seq: 7}
	svc := NewService(newFakeQRRepo(), counter)

	current, err := svc.CurrentNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0007", current.CurrentNumber)
	assert.Equal(t, 7, current.Sequence)
	assert.Equal(t, 7, counter.seq)
}

func TestResolveScan(t *testing.T) {
	repo := newFakeQRRepo()
	repo.codes["0007"] = &models.QRCode{
		QRCodeNumber:       "0007",
		RegionCode:         models.RegionWanChai,
		ProductDescription: models.ProductShake,
		Price:              50,
		IsActive:           true,
	}
	svc := NewService(repo, &fakeCounter{})

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"valid payload", `{"number":"0007"}`, nil},
		{"not json", `not json`, domainErrors.ErrMalformedPayload},
		{"missing field", `{}`, domainErrors.ErrMissingField},
		{"empty number", `{"number":""}`, domainErrors.ErrMissingField},
		{"unknown code", `{"number":"0042"}`, domainErrors.ErrQRCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ResolveScan(context.Background(), tt.payload)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0007", result.Number)
			assert.Equal(t, "灣仔", result.RegionName)
			assert.Equal(t, "灣仔", result.FormattedDisplay.Line1)
			assert.Equal(t, "奶昔：$50", result.FormattedDisplay.Line2)
		})
	}
}

func TestResolveScanSkipsDeactivatedCodes(t *testing.T) {
	repo := newFakeQRRepo()
	repo.codes["0003"] = &models.QRCode{
		QRCodeNumber:       "0003",
		RegionCode:         models.RegionWongTaiSin,
		ProductDescription: models.ProductTea,
		Price:              28,
		IsActive:           false,
	}
	svc := NewService(repo, &fakeCounter{})

	_, err := svc.ResolveScan(context.Background(), `{"number":"0003"}`)
	assert.Equal(t, domainErrors.ErrQRCodeNotFound, err)
}

func TestResolveScanFormatsFractionalPrice(t *testing.T) {
	repo := newFakeQRRepo()
	repo.codes["0010"] = &models.QRCode{
		QRCodeNumber:       "0010",
		RegionCode:         models.RegionShekMun,
		ProductDescription: models.ProductTea,
		Price:              27.5,
		IsActive:           true,
	}
	svc := NewService(repo, &fakeCounter{})

	result, err := svc.ResolveScan(context.Background(), `{"number":"0010"}`)
	require.NoError(t, err)
	assert.Equal(t, "石門", result.FormattedDisplay.Line1)
	assert.Equal(t, "茶：$27.5", result.FormattedDisplay.Line2)
}
