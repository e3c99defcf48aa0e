package kube

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/mlopsworks/azmlops/internal/logging"
)

// ServingWorkload describes a single-container scoring workload to run in a
// namespace: one Deployment plus one LoadBalancer Service in front of it.
type ServingWorkload struct {
	Name      string
	Image     string
	Replicas  int32
	Port      int32 // container port the scoring bootstrap listens on
	CPU       float64
	MemoryGB  float64
	Env       map[string]string
	SecretEnv map[string]string // injected via env too, kept separate for clarity
	Labels    map[string]string
}

func (w *ServingWorkload) labels() map[string]string {
	out := map[string]string{"app": w.Name}
	for k, v := range w.Labels {
		out[k] = v
	}
	return out
}

func (w *ServingWorkload) envVars() []corev1.EnvVar {
	out := make([]corev1.EnvVar, 0, len(w.Env)+len(w.SecretEnv))
	for k, v := range w.Env {
		out = append(out, corev1.EnvVar{Name: k, Value: v})
	}
	for k, v := range w.SecretEnv {
		out = append(out, corev1.EnvVar{Name: k, Value: v})
	}
	return out
}

func (w *ServingWorkload) resources() corev1.ResourceRequirements {
	req := corev1.ResourceList{}
	if w.CPU > 0 {
		req[corev1.ResourceCPU] = *resource.NewMilliQuantity(int64(w.CPU*1000), resource.DecimalSI)
	}
	if w.MemoryGB > 0 {
		req[corev1.ResourceMemory] = *resource.NewQuantity(int64(w.MemoryGB*1024)*1024*1024, resource.BinarySI)
	}
	return corev1.ResourceRequirements{Requests: req}
}

// ApplyServingDeployment creates or updates the Deployment for a serving
// workload (idempotent).
func (c *Client) ApplyServingDeployment(ctx context.Context, namespace string, w *ServingWorkload) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if namespace == "" || w == nil || w.Name == "" {
		return fmt.Errorf("namespace/workload is empty")
	}

	logger := logging.FromContext(ctx).With("namespace", namespace, "deployment", w.Name)

	replicas := w.Replicas
	if replicas <= 0 {
		replicas = 1
	}
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: w.Name, Labels: w.labels()},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{"app": w.Name}},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: w.labels()},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:      w.Name,
							Image:     w.Image,
							Ports:     []corev1.ContainerPort{{ContainerPort: w.Port, Protocol: corev1.ProtocolTCP}},
							Env:       w.envVars(),
							Resources: w.resources(),
						},
					},
				},
			},
		},
	}

	existing, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, w.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get deployment %s: %w", w.Name, err)
		}
		if _, err := c.Clientset.AppsV1().Deployments(namespace).Create(ctx, dep, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("create deployment %s: %w", w.Name, err)
		}
		logger.Info(ctx, "deployment created")
		return nil
	}

	dep.ResourceVersion = existing.ResourceVersion
	if _, err := c.Clientset.AppsV1().Deployments(namespace).Update(ctx, dep, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update deployment %s: %w", w.Name, err)
	}
	logger.Info(ctx, "deployment updated")
	return nil
}

// ApplyServingService creates or updates a LoadBalancer Service exposing the
// workload's container port on port 80 (idempotent).
func (c *Client) ApplyServingService(ctx context.Context, namespace string, w *ServingWorkload) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if namespace == "" || w == nil || w.Name == "" {
		return fmt.Errorf("namespace/workload is empty")
	}

	logger := logging.FromContext(ctx).With("namespace", namespace, "service", w.Name)

	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: w.Name, Labels: w.labels()},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeLoadBalancer,
			Selector: map[string]string{"app": w.Name},
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       80,
					TargetPort: intstr.FromInt32(w.Port),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}

	existing, err := c.Clientset.CoreV1().Services(namespace).Get(ctx, w.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get service %s: %w", w.Name, err)
		}
		if _, err := c.Clientset.CoreV1().Services(namespace).Create(ctx, svc, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("create service %s: %w", w.Name, err)
		}
		logger.Info(ctx, "service created")
		return nil
	}

	// ClusterIP is immutable; carry it over on update.
	svc.ResourceVersion = existing.ResourceVersion
	svc.Spec.ClusterIP = existing.Spec.ClusterIP
	if _, err := c.Clientset.CoreV1().Services(namespace).Update(ctx, svc, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update service %s: %w", w.Name, err)
	}
	logger.Info(ctx, "service updated")
	return nil
}

// WaitForServiceIngress polls until the LoadBalancer Service has an external
// IP or hostname assigned and returns it.
func (c *Client) WaitForServiceIngress(ctx context.Context, namespace, name string, timeout time.Duration) (string, error) {
	if c == nil || c.Clientset == nil {
		return "", fmt.Errorf("kube client is not initialized")
	}

	var addr string
	err := wait.PollUntilContextTimeout(ctx, 10*time.Second, timeout, true, func(ctx context.Context) (bool, error) {
		svc, err := c.Clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			if apierrors.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		for _, ing := range svc.Status.LoadBalancer.Ingress {
			if ing.IP != "" {
				addr = ing.IP
				return true, nil
			}
			if ing.Hostname != "" {
				addr = ing.Hostname
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return "", fmt.Errorf("wait for service %s/%s ingress: %w", namespace, name, err)
	}
	return addr, nil
}

// ServiceIngress returns the LoadBalancer Service's current external IP or
// hostname, or "" when no ingress is assigned yet (or the Service is gone).
func (c *Client) ServiceIngress(ctx context.Context, namespace, name string) (string, error) {
	if c == nil || c.Clientset == nil {
		return "", fmt.Errorf("kube client is not initialized")
	}
	svc, err := c.Clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get service %s/%s: %w", namespace, name, err)
	}
	for _, ing := range svc.Status.LoadBalancer.Ingress {
		if ing.IP != "" {
			return ing.IP, nil
		}
		if ing.Hostname != "" {
			return ing.Hostname, nil
		}
	}
	return "", nil
}

// ServingWorkloadExists reports whether the workload's Deployment exists and
// how many replicas are ready.
func (c *Client) ServingWorkloadExists(ctx context.Context, namespace, name string) (bool, int32, error) {
	if c == nil || c.Clientset == nil {
		return false, 0, fmt.Errorf("kube client is not initialized")
	}
	dep, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("get deployment %s: %w", name, err)
	}
	return true, dep.Status.ReadyReplicas, nil
}

// DeleteServingWorkload deletes the workload's Service and Deployment
// (idempotent best-effort).
func (c *Client) DeleteServingWorkload(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}

	if err := c.Clientset.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete service %s: %w", name, err)
	}
	if err := c.Clientset.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete deployment %s: %w", name, err)
	}
	return nil
}
