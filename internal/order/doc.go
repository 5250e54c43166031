// Package order handles the order form: it cleans and validates what the
// visitor typed, posts it to the shop's Google Form, builds a fallback the
// visitor can use when that fails, and e-mails the owner about accepted
// orders.
//
// Validation failures never reach the network:
//
//	res, err := svc.Submit(ctx, order.FromForm(r.PostForm))
//	switch {
//	case errors.Is(err, order.ErrInvalid):
//		// render res.Errors inline
//	case err != nil:
//		// render the error notice and res.Fallback
//	default:
//		// res.Ref identifies the order
//	}
package order
