// Package services holds the site client's application services. Rows come
// from the data gateway unfiltered; every public view passes them through
// the gate package before anything is rendered.
package services
