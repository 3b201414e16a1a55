package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coreos/go-systemd/v22/journal"

	"github.com/tapsoran/admintui/alert"
	"github.com/tapsoran/admintui/api"
	"github.com/tapsoran/admintui/cli"
	"github.com/tapsoran/admintui/mockapi"
	"github.com/tapsoran/admintui/session"
	"github.com/tapsoran/admintui/store"
	"github.com/tapsoran/admintui/ui"
	"github.com/tapsoran/admintui/ui/common"
	"github.com/tapsoran/admintui/util"
)

// journalWriter routes the standard logger to the systemd journal so log
// lines survive when stderr belongs to the alternate screen.
type journalWriter struct{}

func (journalWriter) Write(p []byte) (int, error) {
	if err := journal.Print(journal.PriInfo, "%s", string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	versionFlag := flag.Bool("v", false, "print version and exit")
	mockFlag := flag.Bool("mock", false, "serve the bundled mock API instead of starting the console")
	flag.Parse()

	if *versionFlag {
		fmt.Println(util.GetNameAndVersion())
		return
	}

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	if conf.Conf.WithJournald && journal.Enabled() {
		log.SetOutput(journalWriter{})
		log.SetFlags(0)
	}

	if *mockFlag {
		log.Printf("Mock API listening on :%d", conf.Conf.MockPort)
		if err := mockapi.NewServer().Run(conf.Conf.MockPort); err != nil {
			log.Fatalf("Mock API failed: %v", err)
		}
		return
	}

	configDir, err := util.GetConfigDir()
	if err != nil {
		log.Fatalf("Failed to resolve config directory: %v", err)
	}

	st, err := store.Open(filepath.Join(configDir, "state.db"))
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer st.Close()

	client := api.NewClient(conf.Conf.ApiUrl, conf.RequestTimeout())
	sess := session.NewManager(client, st)
	sess.Restore()

	// Everything after the flags is a one-shot CLI command. The TUI only
	// starts when the binary is invoked bare.
	if args := flag.Args(); len(args) > 0 {
		handler := cli.NewHandler(os.Stdout, client, conf)
		if err := handler.Execute(context.Background(), args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !conf.Conf.WithJournald {
		f, err := tea.LogToFile(filepath.Join(configDir, "debug.log"), "")
		if err == nil {
			defer f.Close()
		}
	}

	soundEnabled := func() bool {
		if !st.HasSoundPreference() {
			return conf.Conf.SoundDefault
		}
		return st.SoundEnabled()
	}
	alerter := alert.New(os.Stdout, soundEnabled)

	model := ui.NewModel(client, sess, st, alerter, conf,
		common.MinWindowWidth, common.MinWindowHeight)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}
