package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/common"
)

func cartMux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart/current/", requireBearer("acc-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          3,
			"items":       []map[string]any{{"id": 10, "quantity": 2, "subtotal": "19.98", "product": map[string]any{"id": 1, "name": "Red mug"}}},
			"total_price": "19.98",
			"total_items": 2,
		})
	}))
	mux.HandleFunc("POST /api/cart/items/", requireBearer("acc-1", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, float64(1), body["product_id"])
		writeJSON(w, http.StatusCreated, map[string]any{"id": 10, "quantity": body["quantity"]})
	}))
	mux.HandleFunc("PATCH /api/cart/items/10/", requireBearer("acc-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 10, "quantity": decodeBody(t, r)["quantity"]})
	}))
	mux.HandleFunc("DELETE /api/cart/items/10/", requireBearer("acc-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return mux
}

func TestCartService_Current(t *testing.T) {
	client, store := newTestAPI(t, cartMux(t))
	loginAs(t, store, "acc-1")

	c, err := NewCartService(client).Current(context.Background())
	require.NoError(t, err)
	assert.False(t, c.IsEmpty())
	assert.Equal(t, "Red mug", c.Items[0].Product.Name)
	assert.Equal(t, 2, c.TotalItems)
}

func TestCartService_ItemLifecycle(t *testing.T) {
	client, store := newTestAPI(t, cartMux(t))
	loginAs(t, store, "acc-1")
	svc := NewCartService(client)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = svc.UpdateItem(ctx, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	require.NoError(t, svc.RemoveItem(ctx, 10))
}

func TestCartService_Validation(t *testing.T) {
	svc := NewCartService(nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 0)
	assert.ErrorIs(t, err, common.ErrInvalidQuantity)
	_, err = svc.AddItem(ctx, 0, 1)
	assert.ErrorIs(t, err, common.ErrInvalidID)
	_, err = svc.UpdateItem(ctx, 10, -1)
	assert.ErrorIs(t, err, common.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.RemoveItem(ctx, 0), common.ErrInvalidID)
}

// A cart request without a refresh path ends the session.
func TestCartService_ExpiredSession(t *testing.T) {
	client, store := newTestAPI(t, cartMux(t))
	require.NoError(t, store.SetCredentials(context.Background(), sessionWithoutRefresh("stale")))

	_, err := NewCartService(client).Current(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrSessionExpired))

	ok, _ := NewAuthService(client, store, nil).IsAuthenticated(context.Background())
	assert.False(t, ok)
}
