// Package storefront talks to the storefront's HTTP API: it checks the
// door listing endpoint returns a well-formed catalog and asks the
// storefront to drop its cached listing after a database change.
package storefront
