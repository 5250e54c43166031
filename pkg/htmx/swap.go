package htmx

// SwapStrategy is an hx-swap / HX-Reswap value.
type SwapStrategy string

// SwapInnerHTML replaces the children of the target. Error toasts are
// reswapped with it so they never replace #toast itself.
const SwapInnerHTML SwapStrategy = "innerHTML"
