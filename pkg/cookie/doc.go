// Package cookie reads and writes the site's cookies.
//
// Plain cookies carry visitor preferences (theme, language). Flash messages
// survive exactly one redirect and are AES-GCM encrypted with a key derived
// from the configured secret.
//
//	m := cookie.New(cookie.WithSecret(secret), cookie.WithSecure(true))
//	m.Set(w, "theme", "dark", 365*24*60*60, cookie.Readable())
//	_ = m.SetFlash(w, "order", notice)
package cookie
