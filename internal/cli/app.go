// Package cli implements an interactive admin console for the
// user-management API. It talks to a running server over HTTP.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/netx"
	"github.com/josuelns/authapi/internal/server/models"
)

type App struct {
	client   *APIClient
	reader   *bufio.Reader
	userName string
}

func NewApp(serverAddr string) *App {
	return &App{
		client: NewAPIClient(serverAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Run(ctx context.Context) {

	log.Println("Welcome to the user admin console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("admin %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: create, list, delete <id>, avatar <id> [file], logout, exit")
			} else {
				fmt.Println("Available commands: login, create, list, exit")
			}
		case "login":
			a.login(ctx)
		case "create":
			a.create(ctx)
		case "list":
			a.list(ctx)
		case "delete":
			a.delete(ctx, args)
		case "avatar":
			a.avatar(ctx, args)
		case "logout":
			a.client.SetToken("")
			a.userName = ""
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command, type 'help'")
		}
	}
}

func (a *App) login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	a.userName = user.Email
	log.Printf("Login successful")
}

func (a *App) create(ctx context.Context) {

	req := &models.CreateUserRequest{}
	fields := []struct {
		prompt string
		dest   *string
	}{
		{"Enter name", &req.Name},
		{"Enter surname", &req.Surname},
		{"Enter email", &req.Email},
		{"Enter address", &req.Address},
		{"Enter phone (optional)", &req.Phone},
		{"Enter blood type", &req.BloodType},
		{"Enter birthday (YYYY-MM-DD)", &req.Birthday},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
		*f.dest = v
	}

	sex, err := GetSimpleText(a.reader, "Enter sex (MALE/FEMALE/OTHER)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	req.Sex = models.Sex(strings.ToUpper(sex))

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	user, err := a.client.CreateUser(ctx, req)
	if err != nil {
		log.Printf("Create unsuccessful: %s", err.Error())
		return
	}

	log.Printf("Created user %d (%s)", user.ID, user.Email)
}

func (a *App) list(ctx context.Context) {

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		log.Printf("List unsuccessful: %s", err.Error())
		return
	}
	if len(users) == 0 {
		fmt.Println("No users")
		return
	}

	for _, u := range users {
		fmt.Printf("%5d  %-30s %s %s\n", u.ID, u.Email, u.Name, u.Surname)
	}
}

func (a *App) delete(ctx context.Context, args []string) {

	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: delete <id>")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: delete <id>")
		return
	}

	user, err := a.client.DeleteUser(ctx, id)
	if err != nil {
		log.Printf("Delete unsuccessful: %s", err.Error())
		return
	}

	log.Printf("Deleted user %d (%s)", user.ID, user.Email)
}

// avatar with one argument prints the user's avatar download URL; with a
// second argument it uploads that file as the new avatar.
func (a *App) avatar(ctx context.Context, args []string) {

	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}
	if len(args) == 0 || len(args) > 2 {
		fmt.Println("Usage: avatar <id> [file]")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: avatar <id> [file]")
		return
	}

	if len(args) == 1 {
		url, err := a.client.GetAvatarDownloadURL(ctx, id)
		if err != nil {
			log.Printf("error: %s", err.Error())
			return
		}
		fmt.Println(url)
		return
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		log.Printf("error reading file: %s", err.Error())
		return
	}

	key, uploadURL, err := a.client.IssueAvatarUpload(ctx, id)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(args[1]))
	if err := netx.UploadToPresignedURL(uploadURL, data, contentType); err != nil {
		log.Printf("upload error: %s", err.Error())
		return
	}

	log.Printf("Uploaded avatar for user %d (key %s)", id, key)
}
