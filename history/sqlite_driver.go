package history

import _ "modernc.org/sqlite"

const driverName = "sqlite"
