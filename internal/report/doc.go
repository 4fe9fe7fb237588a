// Package report renders classified stadium events into chat-ready text lines.
//
// Two modes share one renderer: the alert mode lists only disruptive events (the
// "today" alert) and the summary mode lists every event of every day in a date range
// (the "next five days" summary). Output lines carry markdown bullets, bold markers
// and emoji tags verbatim; Chunk splits them into delivery-sized messages.
package report
