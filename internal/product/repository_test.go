package product

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"marmita-storefront/internal/supabase"
	"marmita-storefront/internal/supabase/supabasetest"
	"marmita-storefront/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListAvailablePage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := supabasetest.NewClient(t, false, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/rest/v1/marmitas", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "eq.true", q.Get("available"))
			assert.Equal(t, "name.asc", q.Get("order"))
			assert.Equal(t, "12", q.Get("limit"))
			assert.Equal(t, "24", q.Get("offset"))
			assert.Equal(t, "Bearer "+supabasetest.APIKey, r.Header.Get("Authorization"))

			supabasetest.JSON(w, http.StatusOK, `[
				{"id":"m1","name":"Feijoada","price":24.9,"ingredients":[{"name":"feijão","grams":200}]},
				{"id":"m2","name":"Strogonoff","price":22,"available":true,"image_url":"http://img/2.png"}
			]`)
		})

		repo := NewRepository(client)
		products, err := repo.ListAvailablePage(ctx, 12, 24)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "Feijoada", products[0].Name)
		assert.True(t, products[0].Available, "missing availability defaults to true")
		assert.True(t, decimal.RequireFromString("24.9").Equal(products[0].Price))
		assert.Equal(t, []Ingredient{{Name: "feijão", Grams: 200}}, products[0].Ingredients)
		assert.Equal(t, "http://img/2.png", utils.PtrString(products[1].ImageURL))
	})

	t.Run("BackendError", func(t *testing.T) {
		client := supabasetest.NewClient(t, false, func(w http.ResponseWriter, r *http.Request) {
			supabasetest.JSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
		})

		_, err := NewRepository(client).ListAvailablePage(ctx, 12, 0)
		apiErr, ok := supabase.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "boom", apiErr.Message)
	})
}

func TestRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		client := supabasetest.NewClient(t, false, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.m1", r.URL.Query().Get("id"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			supabasetest.JSON(w, http.StatusOK, `[{"id":"m1","name":"Feijoada","price":24.9,"available":false}]`)
		})

		p, err := NewRepository(client).Get(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, "m1", p.ID)
		assert.False(t, p.Available)
	})

	t.Run("NotFound", func(t *testing.T) {
		client := supabasetest.NewClient(t, false, func(w http.ResponseWriter, r *http.Request) {
			supabasetest.JSON(w, http.StatusOK, `[]`)
		})

		_, err := NewRepository(client).Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("BlankID", func(t *testing.T) {
		_, err := NewRepository(nil).Get(ctx, "  ")
		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestRepository_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("NewestFirst", func(t *testing.T) {
		client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
			assert.Empty(t, r.URL.Query().Get("available"))
			assert.Equal(t, "Bearer "+supabasetest.UserToken, r.Header.Get("Authorization"))
			supabasetest.JSON(w, http.StatusOK, `[{"id":"m3","name":"Nova","price":10,"available":false}]`)
		})

		products, err := NewRepository(client).ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.False(t, products[0].Available)
	})

	t.Run("SignedOut", func(t *testing.T) {
		client := supabasetest.NewClient(t, false, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request must not be sent without a session")
		})

		_, err := NewRepository(client).ListAll(ctx)
		assert.ErrorIs(t, err, supabase.ErrNoSession)
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "Frango grelhado", body["name"])
			assert.Equal(t, 19.5, body["price"])
			assert.Equal(t, false, body["available"])
			assert.NotContains(t, body, "id")
			assert.NotContains(t, body, "description")
			assert.Equal(t, []any{}, body["ingredients"])

			supabasetest.JSON(w, http.StatusCreated, `[{"id":"new-1","name":"Frango grelhado","price":19.5,"available":false}]`)
		})

		p, err := NewRepository(client).Create(ctx, Input{
			Name:        " Frango grelhado ",
			Description: utils.StrPtr("   "),
			Price:       decimal.RequireFromString("19.50"),
			Available:   false,
		})
		require.NoError(t, err)
		assert.Equal(t, "new-1", p.ID)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := NewRepository(nil)

		_, err := repo.Create(ctx, Input{Name: " ", Price: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, ErrInvalidName)

		_, err = repo.Create(ctx, Input{Name: "x", Price: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = repo.Create(ctx, Input{Name: "x", Ingredients: []Ingredient{{Name: "arroz", Grams: -5}}})
		assert.ErrorIs(t, err, ErrInvalidGrams)
	})

	t.Run("EmptyRepresentation", func(t *testing.T) {
		client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
			supabasetest.JSON(w, http.StatusCreated, `[]`)
		})

		_, err := NewRepository(client).Create(ctx, Input{Name: "x"})
		assert.ErrorIs(t, err, supabase.ErrEmptyResponse)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "eq.m1", r.URL.Query().Get("id"))
			supabasetest.JSON(w, http.StatusOK, `[{"id":"m1","name":"Feijoada light","price":21}]`)
		})

		p, err := NewRepository(client).Update(ctx, "m1", Input{Name: "Feijoada light", Price: decimal.NewFromInt(21), Available: true})
		require.NoError(t, err)
		assert.Equal(t, "Feijoada light", p.Name)
	})

	t.Run("NoRowMatched", func(t *testing.T) {
		client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
			supabasetest.JSON(w, http.StatusOK, `[]`)
		})

		_, err := NewRepository(client).Update(ctx, "gone", Input{Name: "x"})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("BlankID", func(t *testing.T) {
		_, err := NewRepository(nil).Update(ctx, "", Input{Name: "x"})
		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	client := supabasetest.NewClient(t, true, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.m1", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, NewRepository(client).Delete(ctx, "m1"))
	assert.ErrorIs(t, NewRepository(client).Delete(ctx, ""), ErrMissingID)
}
