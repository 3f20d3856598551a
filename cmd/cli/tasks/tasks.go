package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/taskhub/taskhub/cmd/cli/config"
	"github.com/taskhub/taskhub/cmd/cli/output"
	"github.com/taskhub/taskhub/internal/models"
)

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		getTaskCmd(),
		addTaskCmd(),
		doneTaskCmd(),
		rmTaskCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(cmd *cobra.Command, args []string) {
			var tasks []models.Task
			if err := apiGet("/tasks", &tasks); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				output.RenderJSON(tasks)
				return
			}

			rows := make([][]interface{}, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []interface{}{t.ID, t.Title, t.Description, t.Status})
			}
			output.RenderTable([]string{"ID", "Title", "Description", "Status"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")

	return cmd
}

// ==========================
// GET
// ==========================
func getTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var task models.Task
			if err := apiGet("/tasks/"+args[0], &task); err != nil {
				fmt.Println(err)
				return
			}
			output.RenderJSON(task)
		},
	}
}

// ==========================
// ADD
// ==========================
func addTaskCmd() *cobra.Command {

	var title string
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{
				"title":       title,
				"description": description,
			}

			var task models.Task
			if err := apiPost("/tasks", payload, &task); err != nil {
				fmt.Println(err)
				return
			}

			fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")

	return cmd
}

// ==========================
// DONE (toggle)
// ==========================
func doneTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var out struct {
				NewStatus string `json:"new_status"`
			}
			if err := apiDo("PUT", "/tasks/"+args[0], nil, &out); err != nil {
				fmt.Println(err)
				return
			}

			fmt.Printf("Task %s is now %s\n", args[0], out.NewStatus)
		},
	}
}

// ==========================
// REMOVE
// ==========================
func rmTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiDo("DELETE", "/tasks/"+args[0], nil, nil); err != nil {
				fmt.Println(err)
				return
			}

			fmt.Println("Task deleted")
		},
	}
}

// ==========================
// HTTP helpers
// ==========================

func apiGet(path string, out interface{}) error {
	return apiDo("GET", path, nil, out)
}

func apiPost(path string, payload interface{}, out interface{}) error {
	return apiDo("POST", path, payload, out)
}

func apiDo(method, path string, payload, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}

	return nil
}
