// Package disruption decides which stadium events are likely to disrupt traffic.
//
// Events are tagged EARLY when they start before the evening cutoff and LARGE when
// their expected attendance exceeds the threshold. A day with several events is
// tagged COMBINED_LARGE when their total attendance exceeds the threshold and two of
// them start within the clustering window. Tags live in a side map keyed by event
// identity; the events themselves are never modified.
package disruption
