package main

type Command struct {
	Version struct{} `cmd:"" help:"Print version information."`
	Backup  struct {
		Config string `help:"config file path" short:"c"`
		DryRun bool   `help:"don't write any files, just print the output"`
	} `cmd:"" help:"Back up the project database, uploads and environment file to the backup volume."`
	Restore struct {
		Config string `help:"config file path" short:"c"`
	} `cmd:"" help:"Interactively restore a backup archive over the project directory."`
	List struct {
		Config string `help:"config file path" short:"c"`
	} `cmd:"" help:"List backup archives on the backup volume."`
	Daemon struct {
		Config string `help:"config file path" short:"c" required:""`
		DryRun bool   `help:"don't write any files, just print the output"`
	} `cmd:"" help:"Run backups on the configured cron schedule."`
}
