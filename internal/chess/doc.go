// Package chess is a rules engine for standard chess.
//
// A Game owns a Board and its State and is the usual entry point: it lists
// legal moves, commits them, reports check, checkmate, stalemate and draws
// by rule, and steps backwards and forwards through the moves played.
// The lower layers are usable on their own. RulesFor answers geometry
// questions per piece kind, Executor applies and reverses moves, IsAttacked
// is the attack oracle, and Generator filters moves for king safety by
// probing each one on the board in place.
//
// Boards handed out by the package are always copies. Nothing in the package
// is safe for concurrent use except the shared PieceRules instances.
package chess
