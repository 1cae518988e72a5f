package commands_test

import (
	"errors"
	"testing"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := newTestParcel(t)
	cmd, err := commands.NewStartCheckoutCommand(p.ID(), "bob@example.com")
	require.NoError(t, err)
	created := ports.CheckoutSession{Reference: "cs_test_9", URL: "https://checkout.example/cs_test_9"}

	r := newRepos()
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	gateway := new(MockPaymentGateway)

	mock.InOrder(
		r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		gateway.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(req ports.CheckoutRequest) bool {
			return req.ParcelID.IsEqual(p.ID()) &&
				req.Cost.Amount() == 1500 &&
				req.PayerEmail.String() == "bob@example.com"
		})).Return(created, nil).Once(),
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		r.parcels.On("Update", ctx, p).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	session, err := commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, created, session)
	assert.Equal(t, "cs_test_9", p.CheckoutSession())
	r.assertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestStartCheckoutCommandHandler_Handle_Refusals(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name      string
		newParcel func(t *testing.T) *parcel.Parcel
		caller    string
		wantErr   error
	}{
		{"not the sender", newTestParcel, "mallory@example.com", commands.ErrForbidden},
		{"already paid", newPaidParcel, "bob@example.com", parcel.ErrAlreadyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.newParcel(t)
			cmd, err := commands.NewStartCheckoutCommand(p.ID(), tt.caller)
			require.NoError(t, err)

			r := newRepos()
			factory := new(MockParcelUoWFactory)
			factory.On("Create").Return(r.uow).Once()
			gateway := new(MockPaymentGateway)
			r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

			_, err = commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
			r.uow.AssertNotCalled(t, "Begin", mock.Anything)
		})
	}
}

func TestStartCheckoutCommandHandler_Handle_GatewayError(t *testing.T) {
	ctx := t.Context()
	p := newTestParcel(t)
	cmd, _ := commands.NewStartCheckoutCommand(p.ID(), "bob@example.com")
	gatewayErr := errors.Join(ports.ErrGatewayUnavailable, errors.New("card_declined"))

	r := newRepos()
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	gateway := new(MockPaymentGateway)
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	gateway.On("CreateCheckoutSession", ctx, mock.Anything).Return(ports.CheckoutSession{}, gatewayErr).Once()

	_, err := commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrGatewayUnavailable)
	assert.Empty(t, p.CheckoutSession())
	r.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestStartCheckoutCommandHandler_Handle_ReusesOpenSession(t *testing.T) {
	ctx := t.Context()
	p := newTestParcel(t)
	require.NoError(t, p.AttachCheckoutSession("cs_test_open"))
	cmd, _ := commands.NewStartCheckoutCommand(p.ID(), "bob@example.com")
	open := ports.CheckoutSession{Reference: "cs_test_open", URL: "https://checkout.example/cs_test_open", Open: true}

	r := newRepos()
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	gateway := new(MockPaymentGateway)
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	gateway.On("RetrieveSession", ctx, "cs_test_open").Return(open, nil).Once()

	session, err := commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, open, session)
	gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestStartCheckoutCommandHandler_Handle_KeepsPaidSession(t *testing.T) {
	ctx := t.Context()
	p := newTestParcel(t)
	require.NoError(t, p.AttachCheckoutSession("cs_test_paid"))
	cmd, _ := commands.NewStartCheckoutCommand(p.ID(), "bob@example.com")

	r := newRepos()
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(r.uow).Once()
	gateway := new(MockPaymentGateway)
	r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	gateway.On("RetrieveSession", ctx, "cs_test_paid").
		Return(ports.CheckoutSession{Reference: "cs_test_paid", Paid: true}, nil).Once()

	_, err := commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

	require.ErrorIs(t, err, parcel.ErrAlreadyPaid)
	assert.Equal(t, "cs_test_paid", p.CheckoutSession())
	gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	r.parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStartCheckoutCommandHandler_Handle_ReplacesStaleSession(t *testing.T) {
	tests := []struct {
		name     string
		existing ports.CheckoutSession
		err      error
	}{
		{"expired", ports.CheckoutSession{Reference: "cs_test_old"}, nil},
		{"unknown to the gateway", ports.CheckoutSession{}, ports.ErrCheckoutSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := newTestParcel(t)
			require.NoError(t, p.AttachCheckoutSession("cs_test_old"))
			cmd, _ := commands.NewStartCheckoutCommand(p.ID(), "bob@example.com")
			created := ports.CheckoutSession{Reference: "cs_test_new", URL: "https://checkout.example/cs_test_new", Open: true}

			r := newRepos()
			factory := new(MockParcelUoWFactory)
			factory.On("Create").Return(r.uow).Once()
			gateway := new(MockPaymentGateway)

			mock.InOrder(
				r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
				gateway.On("RetrieveSession", ctx, "cs_test_old").Return(tt.existing, tt.err).Once(),
				gateway.On("CreateCheckoutSession", ctx, mock.Anything).Return(created, nil).Once(),
				r.uow.On("Begin", ctx).Return(nil).Once(),
				r.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
				r.parcels.On("Update", ctx, p).Return(nil).Once(),
				r.uow.On("Commit", ctx).Return(nil).Once(),
			)
			r.uow.On("Rollback", ctx).Return(nil).Maybe()

			session, err := commands.NewStartCheckoutCommandHandler(factory, gateway).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, created, session)
			assert.Equal(t, "cs_test_new", p.CheckoutSession())
			gateway.AssertExpectations(t)
		})
	}
}
