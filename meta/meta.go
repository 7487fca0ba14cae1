// meta/meta.go
package meta

// GAME is the game played when none is configured.
const GAME = "connect4"

// ITERATIONS defines the number of UCT iterations per move.
const ITERATIONS = 1000

// EXPLORATION defines the UCB1 exploration constant.
const EXPLORATION = 1.0

// POLICY defines how the move is picked once the search is over.
const POLICY = "visits"

// GAMES defines the number of games per arena.
const GAMES = 20

// WORKERS defines the number of games an arena plays at once.
const WORKERS = 4

// MAX_MOVES cuts off games that have not ended after that many moves.
const MAX_MOVES = 10000

const OUT_DIR = "runs"

const LOG_LEVEL = "info"
