// Package works loads the portfolio items shown in the gallery.
//
// A [Source] fetches the raw JSON array of {id, title, image} objects from
// an embedded file, a local file, an HTTP URL or an S3 object. A [Catalog]
// decodes it, sorts it by id descending and caches the result; a
// [Refresher] reloads it on a cron schedule so a slow or failing source
// never blocks page renders once the list has been loaded.
package works
