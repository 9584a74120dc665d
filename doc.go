// Package itemnet checks the content validity of a questionnaire item pool
// before any respondent sees it.
//
// Every item is embedded as a vector, the vectors are treated as
// observations of the items, and the resulting item network is refined
// until its dimensional structure is stable:
//
//	items ─► embeddings ─► network ─► redundancy reduction ─► bootstrap stability
//	                                          ▲                         │
//	                                          └──── unstable items dropped ◄┘
//	                                                                    │
//	                                      stable ─► clusters ─► centrality + CS
//
// Subpackages:
//
//	items/      — item arena, loading, exclusion, deduplication, selections
//	embedding/  — providers (OpenAI, subprocess, hashing) + memory/Redis caches
//	matrix/     — column statistics and matrix helpers on gonum
//	resample/   — seeded bootstrap streams
//	ega/        — network estimation and community detection
//	uva/        — weighted-topological-overlap redundancy reduction
//	bootega/    — bootstrap dimensional stability and item stability scores
//	pipeline/   — iteration controller, finalization, item mapping, Runner
//	centrality/ — node centrality, bootstrap bands and the CS coefficient
//	report/     — text, YAML and PNG reports of a run
//	config/     — YAML + .env + ITEMNET_* configuration
//	synth/      — planted-structure data for tests and demos
//
// Command cmd/itemnet runs the whole pipeline on one item file.
//
// Quick start:
//
//	go run ./cmd/itemnet -input items.yaml -provider hashing -text -
package itemnet
