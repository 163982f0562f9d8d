// Package chrome reads tabs, bookmarks and history from a local Chrome
// (or Chromium) installation.
//
// # Sources
//
//   - Tabs are listed through the DevTools HTTP endpoint, which requires the
//     browser to run with --remote-debugging-port.
//   - Bookmarks are parsed from the profile's Bookmarks JSON file.
//   - History is read from the profile's History SQLite database. Chrome
//     keeps the file locked while running, so each query works on a
//     temporary copy.
//
// # Change Signals
//
// SignalSource watches the profile directory with fsnotify and polls the
// DevTools endpoint to report tab changes. Chrome does not say what changed
// inside its files, so bookmark and history events carry no item ID.
package chrome
