package auth

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/getevo/evo/v2/lib/args"
)

// CreateUser provisions a portal user from the command line. It runs the
// same signup flow as the HTTP endpoint, compensating delete included.
func CreateUser() {
	email := args.Get("-email")
	password := args.Get("-password")
	name := args.Get("-name")
	roleName := args.Get("-role")
	departmentName := args.Get("-department")

	if email == "" || password == "" || name == "" || roleName == "" || departmentName == "" {
		fmt.Println("Usage: ./portal --create-user -email jane@example.com -password secret1 -name Jane -role agent -department BPO")
		os.Exit(1)
	}

	svc := DefaultService()
	user, _, err := svc.SignUp(context.Background(), SignUpInput{
		Email:          email,
		Password:       password,
		Name:           name,
		RoleName:       roleName,
		DepartmentName: departmentName,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Name: %s\n", user.Name)
	if user.Role != nil {
		fmt.Printf("Role: %s (%s)\n", user.Role.RoleName, user.Role.DepartmentName)
	}
	fmt.Printf("ID: %s\n", user.ID.String())
}
