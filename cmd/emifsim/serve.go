package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	// Trace databases are SQLite files.
	_ "github.com/mattn/go-sqlite3"
)

var serveFlags struct {
	db        string
	port      int
	noBrowser bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a recorded trace database over HTTP.",
	RunE:  serveTraces,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.db, "db", os.Getenv("EMIFSIM_TRACE_DB"), "trace database to serve")
	f.IntVar(&serveFlags.port, "port", 0, "port to listen on (0 picks one)")
	f.BoolVar(&serveFlags.noBrowser, "no-browser", false, "do not open the browser")

	rootCmd.AddCommand(serveCmd)
}

type traceServer struct {
	db *sql.DB
}

func serveTraces(cmd *cobra.Command, args []string) error {
	if serveFlags.db == "" {
		return fmt.Errorf("no trace database given (--db or EMIFSIM_TRACE_DB)")
	}

	db, err := sql.Open("sqlite3", serveFlags.db)
	if err != nil {
		return err
	}
	s := &traceServer{db: db}

	r := mux.NewRouter()
	r.HandleFunc("/api/boots", s.listBoots)
	r.HandleFunc("/api/boots/{id}", s.bootStages)
	r.HandleFunc("/api/resource", s.resourceUsage)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", serveFlags.port))
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d/api/boots", listener.Addr().(*net.TCPAddr).Port)
	fmt.Printf("serving traces from %s at %s\n", serveFlags.db, url)

	if !serveFlags.noBrowser {
		_ = browser.OpenURL(url)
	}

	return http.Serve(listener, r)
}

type bootSummary struct {
	BootID string `json:"boot_id"`
	Stages int    `json:"stages"`
	Failed bool   `json:"failed"`
}

func (s *traceServer) listBoots(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(
		`SELECT BootID, COUNT(*), MAX(Error != '') FROM bringup_stages GROUP BY BootID`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var boots []bootSummary
	for rows.Next() {
		var b bootSummary
		if err := rows.Scan(&b.BootID, &b.Stages, &b.Failed); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		boots = append(boots, b)
	}

	writeJSON(w, boots)
}

type stageEntry struct {
	Seq     int    `json:"seq"`
	Stage   string `json:"stage"`
	Error   string `json:"error,omitempty"`
	StartNs int64  `json:"start_ns"`
	EndNs   int64  `json:"end_ns"`
}

func (s *traceServer) bootStages(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(
		`SELECT Seq, Stage, Error, StartNs, EndNs FROM bringup_stages WHERE BootID = ? ORDER BY Seq`,
		mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var stages []stageEntry
	for rows.Next() {
		var e stageEntry
		if err := rows.Scan(&e.Seq, &e.Stage, &e.Error, &e.StartNs, &e.EndNs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		stages = append(stages, e)
	}

	writeJSON(w, stages)
}

func (s *traceServer) resourceUsage(w http.ResponseWriter, r *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpu, _ := proc.CPUPercent()
	memInfo, _ := proc.MemoryInfo()

	usage := map[string]any{"cpu_percent": cpu}
	if memInfo != nil {
		usage["rss_bytes"] = memInfo.RSS
	}

	writeJSON(w, usage)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
