// Package view holds the dashboard's application state and the logic that
// keeps it synchronized with the SignWarpX server.
//
// A Synchronizer owns the warp cache, the statistics store, the active filter
// criteria and the paginator. It never performs I/O itself. Every input (a
// key press, a fetch result, a push event, a timer) is folded into the state
// and answered with a Plan describing the follow-up work:
//
//   - Fetches run in order against a signwarp.Gateway via Execute, and each
//     Result is handed back through Apply.
//   - A Mutation is an invite or uninvite, run with ExecuteMutation.
//   - Timers come back through Fire after the requested delay. Auto-refresh
//     ticks carry a generation so cancelled schedules are ignored.
//   - Rebase, Retarget and StopLive steer the gateway and the push channel.
//
// Once the server disables the web interface the Synchronizer ignores all
// further input except the shutdown timers, so no more API calls are made.
//
// Model returns a value snapshot for the renderers.
package view
