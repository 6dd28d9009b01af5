/*
Package markov provides a small, in-memory, first-order Markov chain over
whitespace-delimited words.

A Chain learns which word follows which as tokens are ingested, tracks
sentence boundaries through trailing punctuation, and produces sentences by
walking the learned transitions at random. Frequency is encoded by
repetition: a successor seen three times after a word is stored three times
and is three times as likely to be drawn.

A Chain is not safe for concurrent use. Callers sharing one across
goroutines must guard Ingest and GenerateSentence with a single lock.
*/
package markov
