// Package scraper discovers the monthly calendar PDFs published on the sports complex
// district's website.
//
// Two strategies are tried on the page: embedded page-builder JSON blocks that pair a
// "month" with a "pdf_file" object, and plain anchors linking to .pdf files whose name
// or text carries a month. Links are deduplicated by URL.
package scraper
