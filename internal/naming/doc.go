// Package naming derives the account identifier from export filenames and
// builds the merged output path.
//
// Export files are named "{account}_tweets_YYYY-MM-DD.csv"; the merged file
// is "{account}_merged_tweets_YYYY-MM-DD.csv", or "merged_tweets_YYYY-MM-DD.csv"
// when no account can be derived.
package naming
