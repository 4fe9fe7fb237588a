// Package alert wires the calendar pipeline together: month rows (or free-text month
// dumps) become calendar events, events are bucketed by day and classified, and the
// report package renders the result.
package alert
