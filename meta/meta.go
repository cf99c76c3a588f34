// meta/meta.go
package meta

// GRID_SIZE defines the number of rows and columns of the board.
const GRID_SIZE = 4

// SEARCH_DEPTH defines the expectimax depth (max and chance plies) per decision.
const SEARCH_DEPTH = 3

// SAMPLE_CAP defines how many empty cells a chance node expands.
const SAMPLE_CAP = 3

// INITIAL_TILES defines the number of tiles dealt at the start of a game.
const INITIAL_TILES = 9

// BONUS_THRESHOLD defines the max tile value from which bonus tiles can appear.
const BONUS_THRESHOLD = 48

// BONUS_ODDS defines the 1-in-N chance that a drawn 3 turns into a bonus tile.
const BONUS_ODDS = 21

// MAX_MOVES caps an autoplay game.
const MAX_MOVES = 5000

// BEST_SCORE_KEY is the storage key of the best score.
const BEST_SCORE_KEY = "threes-best-score"
