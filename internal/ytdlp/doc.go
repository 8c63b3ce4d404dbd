// Package ytdlp invokes the yt-dlp binary to fetch a single stream.
//
// The heavy lifting (HTTP streaming, M3U8 segment assembly, authentication
// tickets, container muxing) all happens inside yt-dlp; this package only
// derives the command line from a task and the run settings, relays the
// subprocess output with a per-task prefix, and turns a non-zero exit into
// a diagnostic that distinguishes authentication failures from rate limiting
// and missing streams where the tool's stderr allows it.
//
//	client := ytdlp.New("")
//	if _, err := client.Version(ctx); err != nil {
//	    // yt-dlp is not installed
//	}
//	err := client.Fetch(ctx, task, settings)
package ytdlp
