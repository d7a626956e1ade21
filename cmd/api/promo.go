package main

import (
	"errors"
	"net/http"

	"bookit/internal/domain/promos"
)

// validatePromoHandler godoc
//
//	@Summary		Validate a promo code
//	@Description	Returns the discount the code grants on the given subtotal. The client must use this amount as is.
//	@Tags			Promo
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		promos.ValidateRequest	true	"Code and subtotal"
//	@Success		200		{object}	promos.ValidateResult
//	@Failure		400		{object}	error	"Invalid promo code"
//	@Failure		500		{object}	error
//	@Router			/promo/validate [post]
func (app *application) validatePromoHandler(w http.ResponseWriter, r *http.Request) {
	var payload promos.ValidateRequest
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, discount, err := app.redeemPromo(r, payload.Code, payload.Subtotal)
	if err != nil {
		if errors.Is(err, promos.ErrInvalidPromo) {
			app.invalidPromoResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	res := promos.ValidateResult{
		Code:         p.Code,
		Discount:     discount,
		DiscountType: p.DiscountType,
	}
	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// redeemPromo looks up code and prices it against subtotal as of now.
func (app *application) redeemPromo(r *http.Request, code string, subtotal int64) (*promos.PromoCode, int64, error) {
	p, err := app.store.Promos.GetByCode(r.Context(), code)
	if err != nil {
		return nil, 0, err
	}

	discount, err := p.DiscountFor(subtotal, app.now())
	if err != nil {
		return nil, 0, err
	}
	return p, discount, nil
}
