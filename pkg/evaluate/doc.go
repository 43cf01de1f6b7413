// Package evaluate turns two data source snapshots into a change script a
// rendering surface can animate: section inserts, deletes and reloads plus a
// row edit script for every section index present in both.
//
// Sections are matched by position. A section that moved from index 2 to 5
// shows up as row noise at the intervening indices; SectionMoves reports
// such moves by stable ID for surfaces that want to animate them.
package evaluate
