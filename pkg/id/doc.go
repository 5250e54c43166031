// Package id generates sortable identifiers for requests and log correlation.
package id
